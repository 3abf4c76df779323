// Package logtail reads the tail of the application log for the Logs view.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// proportional to the requested window rather than the file size. A missing
// file yields no lines and no error; the log file is only created once the
// first record is written.
//
// Parse splits a line in the plain-text layout produced by the tint handler
// (timestamp, three-letter level, message with key=value attributes) so the
// view can color it by severity. Lines in any other shape are returned
// unchanged with LevelUnknown.
package logtail
