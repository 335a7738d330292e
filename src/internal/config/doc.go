// Package config handles configuration file parsing and validation for spu-md5.
//
// The configuration file is TOML and every section is optional: fields left
// out fall back to the values returned by Default.
//
// # Configuration Structure
//
//   - [general]: read chunk size, output template and input decompression
//     used by the sum command
//   - [server]: HTTP listen address and request body limit
//   - [[vector]]: known-answer digests checked by self-check and the
//     /api/v1/vectors endpoint
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/spu-md5.conf")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//
// Validation is performed with go-playground/validator; field paths in
// ValidationErrors use the TOML key names.
package config
