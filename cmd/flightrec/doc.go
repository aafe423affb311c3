// Command flightrec is the operator CLI for the crash video recorder. It
// inspects environment health, cleans up recovery state left behind by a
// previous run, applies retention, and exports recorded videos.
package main
