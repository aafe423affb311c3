// Package preflight provides readiness checks for the filesystem paths
// flightrec depends on.
//
// These checks run in two contexts:
//   - The host calls RunAll before handing the recorder to a session, so a
//     full disk or unwritable recovery directory surfaces before the buffer
//     starts instead of at crash time.
//   - The CLI "flightrec status" command renders individual results to
//     display environment health.
package preflight
