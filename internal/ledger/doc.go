// Package ledger is the boundary to the remote books registry contract.
//
//   - gateway.go: Gateway and Submission, the four calls the controller makes.
//   - abi.go: the registry interface descriptor and item decoding.
//   - contract.go: go-ethereum implementation over a bound contract.
//   - errors.go: CallError and Classify, reducing any failure to a Kind and a
//     human readable reason.
//
// Only the reason text and kind cross into the controller; raw node errors are
// kept for logging via Unwrap.
package ledger
