// Package swaggerui serves Swagger UI for a finalized document.
//
// [Handler] needs nothing on disk: it renders a page that loads the UI from
// a CDN and serves the document next to it.
//
//	h := swaggerui.HandlerMust("/docs/", docJSON)
//	http.Handle("/docs/", h)
//
// [Ensure] is the offline alternative. It downloads the Swagger UI release
// archive once, unpacks its dist directory into <dir>/docs and points the
// bundled index.html at /docs/docs.json. Serve the result with [Static].
package swaggerui
