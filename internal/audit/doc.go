// Package audit appends a summary of every find run to a JSONL history file.
package audit
