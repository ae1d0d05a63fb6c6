// Package cli implements the loghoi command-line interface.
//
// Commands are package-level cobra.Command values registered in init. Each
// command's RunE parses flags and hands off to a plain function taking an
// io.Writer, so the work can be tested without going through cobra.
//
// # Command Structure
//
//	loghoi                 - Landing screen (SSH key check, then devices)
//	loghoi setup           - Run the SSH key check and report the result
//	loghoi devices         - List registered devices
//	loghoi register        - Register a device with the backend
//	loghoi init            - Create a config file
//	loghoi version         - Print version information
//	loghoi completion      - Generate shell completion scripts
//
// # Configuration
//
// Every backend-facing command loads config the same way (see loadConfig):
// the --config path or the usual search order, LOGHOI_* environment
// overrides, then --backend-url on top.
//
// # Machine Output
//
// setup and devices accept --json. Output is wrapped in JSONEnvelope, and
// failures are reported inside the envelope instead of on stderr.
package cli
