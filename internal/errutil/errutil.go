// Package errutil contains methods to simplify working with error
package errutil

import (
	"io"
	"log"
	"os"
)

// Logger is used to report the errors that cannot be returned to the
// caller, like a failing Close() after another failure
var Logger = log.New(os.Stderr, "gitlet: ", 0)

// Close closes the closer and sets the error to err if err is nil.
// If err is already set, the Close() error gets logged instead so it's
// not lost
func Close(c io.Closer, err *error) { //nolint: gocritic // the pointer of pointer is on purpose so we can change the value if it's nil
	e := c.Close()
	switch *err { //nolint: errorlint // no need to use errors.Is here since we're only checking for "is nil or not"
	case nil:
		*err = e
	default:
		if e != nil {
			Logger.Println("Close() failed:", e)
		}
	}
}
