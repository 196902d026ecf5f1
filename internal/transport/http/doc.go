// Package http exposes the normalized run tables over a JSON API. Handlers
// are thin: they resolve the site and solution from the request, delegate
// to the run service and render the table (or the classified error) as
// JSON.
package http
