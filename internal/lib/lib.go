// Package lib holds supporting modules that do not belong to a single
// layer: background job processing (asynq over Redis) and the email client
// (Resend).
package lib
