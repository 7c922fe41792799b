// Package timezone keeps the application timezone used to stamp and render
// reservation timestamps.
//
// Usage:
//
//	now := timezone.Now()                                 // current time in the app timezone
//	text := timezone.Format(row.CreatedAt, time.RFC3339)  // render a stored time for clients
//
// The timezone is read from APP_TIMEZONE when the package is imported. Use
// IANA names such as "UTC", "Asia/Taipei" or "Europe/London".
package timezone
