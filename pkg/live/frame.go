package live

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/vdom"
)

// Frame type tags used on the wire.
const (
	frameEvent   = "event"
	frameHTML    = "html"
	framePatches = "patches"
	framePing    = "ping"
	framePong    = "pong"
	frameError   = "error"
	frameClose   = "close"
)

// clientFrame is a message received from the browser.
type clientFrame struct {
	Type    string          `json:"type"`
	HID     string          `json:"hid,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// serverFrame is a message sent to the browser.
type serverFrame struct {
	Type    string       `json:"type"`
	Seq     uint64       `json:"seq,omitempty"`
	HTML    string       `json:"html,omitempty"`
	Patches []vdom.Patch `json:"patches,omitempty"`
	Message string       `json:"message,omitempty"`
}

// filePayload is one entry of a fileselect event payload. Data is
// base64 so binary contents survive the JSON framing.
type filePayload struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Data string `json:"data"`
}

type fileSelectPayload struct {
	Files []filePayload `json:"files"`
}

type inputPayload struct {
	Value string `json:"value"`
}

type mousePayload struct {
	ClientX  int  `json:"clientX"`
	ClientY  int  `json:"clientY"`
	Button   int  `json:"button"`
	CtrlKey  bool `json:"ctrlKey"`
	ShiftKey bool `json:"shiftKey"`
	AltKey   bool `json:"altKey"`
	MetaKey  bool `json:"metaKey"`
}

// decodeEventPayload turns a raw payload into the typed event value a
// handler of the given event name expects.
func decodeEventPayload(event string, payload json.RawMessage) (any, error) {
	switch event {
	case "fileselect":
		var p fileSelectPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("live: decode fileselect payload: %w", err)
			}
		}
		ev := reactive.FileEvent{}
		for _, f := range p.Files {
			data, err := base64.StdEncoding.DecodeString(f.Data)
			if err != nil {
				return nil, fmt.Errorf("live: decode file %q: %w", f.Name, err)
			}
			ev.Files = append(ev.Files, reactive.FileInfo{
				Name:        f.Name,
				Size:        f.Size,
				ContentType: f.Type,
				Data:        data,
			})
		}
		return ev, nil

	case "input", "change":
		var p inputPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("live: decode input payload: %w", err)
			}
		}
		return reactive.InputEvent{Value: p.Value}, nil

	case "click":
		var p mousePayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("live: decode click payload: %w", err)
			}
		}
		return reactive.MouseEvent{
			ClientX:  p.ClientX,
			ClientY:  p.ClientY,
			Button:   p.Button,
			CtrlKey:  p.CtrlKey,
			ShiftKey: p.ShiftKey,
			AltKey:   p.AltKey,
			MetaKey:  p.MetaKey,
		}, nil

	default:
		return nil, nil
	}
}
