// Package render turns VNode trees into HTML.
//
// Rendering assigns hydration IDs (HIDs) to every element and collects a
// registry of event handlers keyed "hid_event", which the live runtime
// uses to dispatch incoming client events back to Go handlers.
package render
