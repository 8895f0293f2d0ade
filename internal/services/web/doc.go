// Package web serves the agency's public website: the landing page, the
// blog and the application form, in English and Arabic.
//
// Modules own their routes and render through the shared page layout; this
// package assembles them behind the static assets, language resolution and
// request middleware, and runs the HTTP server.
package web
