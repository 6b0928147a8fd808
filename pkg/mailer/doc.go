// Package mailer relays contact form submissions by email.
//
// Templates are markdown files with YAML frontmatter; the body is
// processed as a text/template, converted to HTML with goldmark, and
// wrapped in an HTML layout. Delivery goes through the Sender
// interface; the resend subpackage implements it on the Resend API.
package mailer
