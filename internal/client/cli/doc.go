// Package cli provides the interactive meetrec command-line client.
//
// It wires configuration, local storage, the recording service client and
// the application services into a REPL. Commands that need an account are
// guarded: without a stored credential the user is sent to the login
// prompt instead and the command does not run.
//
// Commands:
//   - register, login, logout
//   - record                submit a meeting for recording
//   - list, watch           show recordings, once or until all are finished
//   - stop <n>              stop a queued recording
//   - download <n>          save a finished recording
//   - profile, editprofile  show or change the profile
//   - whoami                show the session and token details
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
