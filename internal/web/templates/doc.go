// Package templates renders the HTML pages and fragments served by the web
// package as templ components. Edit the .templ sources and run templ generate.
package templates
