// Package speech implements narrate.Synthesizer on top of a local
// text-to-speech binary such as espeak-ng or macOS say.
package speech

import (
	"strconv"
	"strings"
)

// Engine describes how to drive one speech binary. Text is always passed on
// stdin so transcript lines starting with "-" are never read as flags.
type Engine struct {
	Name string
	// Args builds the command line for speaking stdin with voice at rate
	// (words per minute, 0 = default).
	Args func(voice string, rate int) []string
	// ListArgs lists voices; nil when the engine cannot enumerate them.
	ListArgs    []string
	ParseVoices func(out string) []string
}

// Engines are tried in this order when no engine is configured.
var Engines = []Engine{
	{
		Name:        "espeak-ng",
		Args:        espeakArgs,
		ListArgs:    []string{"--voices"},
		ParseVoices: parseEspeakVoices,
	},
	{
		Name:        "espeak",
		Args:        espeakArgs,
		ListArgs:    []string{"--voices"},
		ParseVoices: parseEspeakVoices,
	},
	{
		Name: "say",
		Args: func(voice string, rate int) []string {
			var args []string
			if voice != "" {
				args = append(args, "-v", voice)
			}
			if rate > 0 {
				args = append(args, "-r", strconv.Itoa(rate))
			}
			return append(args, "-f", "-")
		},
		ListArgs:    []string{"-v", "?"},
		ParseVoices: parseSayVoices,
	},
	{
		Name: "spd-say",
		Args: func(voice string, rate int) []string {
			args := []string{"-w", "-e"}
			if voice != "" {
				args = append(args, "-y", voice)
			}
			return args
		},
		ListArgs:    []string{"-L"},
		ParseVoices: parseSpdVoices,
	},
}

// EngineByName returns the known engine called name.
func EngineByName(name string) (Engine, bool) {
	for _, e := range Engines {
		if e.Name == name {
			return e, true
		}
	}
	return Engine{}, false
}

// EngineNames lists the known engines in detection order.
func EngineNames() []string {
	names := make([]string, len(Engines))
	for i, e := range Engines {
		names[i] = e.Name
	}
	return names
}

func espeakArgs(voice string, rate int) []string {
	var args []string
	if voice != "" {
		args = append(args, "-v", voice)
	}
	if rate > 0 {
		args = append(args, "-s", strconv.Itoa(rate))
	}
	return append(args, "--stdin")
}

// parseEspeakVoices reads the language column of `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
func parseEspeakVoices(out string) []string {
	var voices []string
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		voices = append(voices, fields[1])
	}
	return voices
}

// parseSayVoices reads `say -v ?`, where names may contain spaces:
//
//	Bad News            en_US    # The light you see at the end of the tunnel...
func parseSayVoices(out string) []string {
	var voices []string
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		voices = append(voices, strings.Join(fields[:len(fields)-1], " "))
	}
	return voices
}

// parseSpdVoices reads `spd-say -L`, one voice per line after the header.
func parseSpdVoices(out string) []string {
	var voices []string
	for i, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if i == 0 || len(fields) == 0 {
			continue
		}
		voices = append(voices, fields[0])
	}
	return voices
}
