package main

import "net/http"

func servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(demoPage))
}

// demoPage is the demo shell plus a minimal thin client: it mounts the
// server-rendered markup, applies patches, and forwards DOM events
// marked with data-on-* attributes back over the WebSocket.
const demoPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>imago demo</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 4rem auto; }
  .imago-button { padding: 0.6rem 1.2rem; border: 1px solid #888; border-radius: 6px;
                  background: #fff; cursor: pointer; }
  .imago-button[disabled] { opacity: 0.6; cursor: default; }
  .imago-button-error { border-color: #c0392b; color: #c0392b; }
  .imago-progress { display: inline-block; width: 8rem; height: 0.5rem;
                    background: #eee; border-radius: 3px; overflow: hidden; }
  .imago-progress-fill { display: block; height: 100%; background: #2980b9; }
  .imago-progress-indeterminate .imago-progress-fill { width: 40%; animation: slide 1s infinite; }
  @keyframes slide { from { margin-left: -40%; } to { margin-left: 100%; } }
</style>
</head>
<body>
<h1>imago upload button</h1>
<div id="app">connecting…</div>
<script>
(function () {
  var root = document.getElementById("app");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/live");

  ws.onmessage = function (e) {
    var f = JSON.parse(e.data);
    if (f.type === "html") { root.innerHTML = f.html; }
    else if (f.type === "patches") { f.patches.forEach(apply); }
    else if (f.type === "error") { console.warn("live:", f.message); }
  };
  ws.onclose = function () { root.innerHTML = "<em>disconnected</em>"; };

  setInterval(function () {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify({type: "ping"}));
  }, 30000);

  function byHid(hid) { return root.querySelector('[data-hid="' + hid + '"]'); }

  function apply(p) {
    var el;
    switch (p.op) {
    case 1: // SetText
      el = byHid(p.hid);
      if (el) el.textContent = p.value;
      break;
    case 2: // SetAttr
      el = byHid(p.hid);
      if (el) el.setAttribute(p.key, p.value);
      break;
    case 3: // RemoveAttr
      el = byHid(p.hid);
      if (el) el.removeAttribute(p.key);
      break;
    case 4: // InsertNode
      var parent = byHid(p.parentId);
      if (!parent) break;
      var tpl = document.createElement("template");
      tpl.innerHTML = p.html;
      parent.insertBefore(tpl.content, parent.children[p.index] || null);
      break;
    case 5: // RemoveNode
      el = byHid(p.hid);
      if (el) el.remove();
      break;
    case 6: // ReplaceNode
      el = byHid(p.hid);
      if (el) el.outerHTML = p.html;
      break;
    }
  }

  function send(hid, event, payload) {
    ws.send(JSON.stringify({type: "event", hid: hid, event: event, payload: payload}));
  }

  root.addEventListener("click", function (e) {
    var el = e.target.closest("[data-on-click]");
    if (el) send(el.dataset.hid, "click", {clientX: e.clientX, clientY: e.clientY, button: e.button});

    // The visible button proxies for the hidden picker.
    var proxy = e.target.closest("[data-picker-for]");
    if (proxy && !proxy.disabled) {
      var picker = document.getElementById(proxy.getAttribute("data-picker-for"));
      if (picker) picker.click();
    }
  });

  root.addEventListener("input", function (e) {
    var el = e.target.closest("[data-on-input]");
    if (el) send(el.dataset.hid, "input", {value: el.value});
  });

  root.addEventListener("change", function (e) {
    var fileEl = e.target.closest("[data-on-fileselect]");
    if (fileEl) {
      var files = fileEl.files ? Array.prototype.slice.call(fileEl.files) : [];
      Promise.all(files.map(encodeFile)).then(function (encoded) {
        send(fileEl.dataset.hid, "fileselect", {files: encoded});
        fileEl.value = "";
      });
      return;
    }
    var el = e.target.closest("[data-on-change]");
    if (el) send(el.dataset.hid, "change", {value: el.value});
  });

  function encodeFile(file) {
    return new Promise(function (resolve, reject) {
      var reader = new FileReader();
      reader.onload = function () {
        var b64 = reader.result.split(",", 2)[1] || "";
        resolve({name: file.name, size: file.size, type: file.type, data: b64});
      };
      reader.onerror = reject;
      reader.readAsDataURL(file);
    });
  }
})();
</script>
</body>
</html>
`
