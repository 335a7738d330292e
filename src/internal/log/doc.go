// Package log provides simple leveled logging for spu-md5.
//
// Four levels are supported: DEBUG (verbose mode only), INFO, WARN and
// ERROR. Messages carry an ANSI-colored prefix; ERROR goes to stderr and the
// rest to stdout unless SetForceStdErr is enabled.
//
// # Example Usage
//
//	log.Infof("Hashing %s", name)
//	log.SetVerbose(true)
//	log.Debugf("chunk size %d", n)
//
// Commands that write digests to stdout call SetForceStdErr(true) so that
// log output never interleaves with results. Tests redirect both streams with
// SetOutput.
//
// State is global and guarded by a mutex, so the functions may be called
// from any goroutine.
package log
