//go:build windows

package speech

import (
	"errors"
	"os"
)

var errNoJobControl = errors.New("speech: pause is not supported on windows")

func stopProcess(*os.Process) error { return errNoJobControl }

func continueProcess(*os.Process) error { return errNoJobControl }
