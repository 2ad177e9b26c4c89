// Package memhost is a headless in-memory host.
//
// A Document holds named canvases backed by *image.RGBA. GL and GPU are
// headless bridges that hand out context handles and presentation surfaces
// without touching a real device, and FrameQueue runs animation frame
// callbacks when told to. Together they let a Module run outside a browser,
// in tools and in tests.
package memhost
