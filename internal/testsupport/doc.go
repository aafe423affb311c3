// Package testsupport provides shared fixtures for flightrec tests:
// temp-dir-backed configs and in-memory fakes for the external recorder
// and reporter collaborators.
package testsupport
