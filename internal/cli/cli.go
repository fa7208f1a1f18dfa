// Package cli implements the passgen command: flag parsing, the interactive
// prompt and the output of generated passwords.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/natsalete/Password-Generator/internal/config"
	"github.com/natsalete/Password-Generator/internal/crypto"
	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/service"
)

// Limits bound -length. They are wider than the API slider range.
var Limits = config.GeneratorLimits{MinLength: 1, MaxLength: 1024, DefaultLength: 16}

var ErrInvalidCount = errors.New("count must be at least 1")

// Config holds the parsed command-line options.
type Config struct {
	Length       int
	Count        int
	Selection    crypto.Selection
	Copy         bool
	ShowStrength bool
	Interactive  bool
	NoColor      bool
}

// Copier places text on the clipboard. *clipboard.Writer implements it.
type Copier interface {
	Copy(text string) error
}

// ParseFlags registers the passgen flags on fs and parses args.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Selection: crypto.DefaultSelection()}

	fs.IntVar(&cfg.Length, "length", Limits.DefaultLength, "Password length")
	fs.IntVar(&cfg.Length, "l", Limits.DefaultLength, "Password length (shorthand)")

	fs.BoolVar(&cfg.Selection.Uppercase, "upper", true, "Include uppercase letters (A-Z)")
	fs.BoolVar(&cfg.Selection.Lowercase, "lower", true, "Include lowercase letters (a-z)")
	fs.BoolVar(&cfg.Selection.Digits, "digits", true, "Include digits (0-9)")
	fs.BoolVar(&cfg.Selection.Symbols, "symbols", true, "Include symbols")

	fs.BoolVar(&cfg.Selection.ExcludeSimilar, "exclude-similar", false, "Exclude look-alike characters (i l 1 L o 0 O)")
	fs.BoolVar(&cfg.Selection.ExcludeSimilar, "x", false, "Exclude look-alike characters (shorthand)")

	fs.IntVar(&cfg.Count, "count", 1, "Number of passwords to generate")
	fs.IntVar(&cfg.Count, "c", 1, "Number of passwords (shorthand)")

	fs.BoolVar(&cfg.Copy, "copy", false, "Copy the last password to the clipboard")
	fs.BoolVar(&cfg.ShowStrength, "strength", false, "Print the strength of each password")
	fs.BoolVar(&cfg.Interactive, "i", false, "Choose options interactively")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Do not color strength labels")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RunInteractive prompts for every option on w, reading answers from r.
// Blank answers keep the values in defaults. A selection without any
// character class is refused and the toggles are asked again.
func RunInteractive(r io.Reader, w io.Writer, defaults Config) (Config, error) {
	p := &prompter{scanner: bufio.NewScanner(r), w: w}
	cfg := defaults

	fmt.Fprintln(w, "=== Password Generator ===")
	fmt.Fprintln(w)

	cfg.Length = p.askInt("Password length", cfg.Length)

	for {
		sel := cfg.Selection
		sel.Uppercase = p.askBool("Include uppercase letters (A-Z)?", sel.Uppercase)
		sel.Lowercase = p.askBool("Include lowercase letters (a-z)?", sel.Lowercase)
		sel.Digits = p.askBool("Include digits (0-9)?", sel.Digits)
		sel.Symbols = p.askBool("Include symbols?", sel.Symbols)
		sel.ExcludeSimilar = p.askBool("Exclude look-alike characters (i l 1 L o 0 O)?", sel.ExcludeSimilar)

		if sel.Any() {
			cfg.Selection = sel
			break
		}
		fmt.Fprintf(w, "%s\n\n", crypto.ErrNoClassSelected)
		if p.done {
			return Config{}, crypto.ErrNoClassSelected
		}
	}

	cfg.Count = p.askInt("How many passwords?", cfg.Count)
	cfg.ShowStrength = true

	fmt.Fprintln(w)
	return cfg, nil
}

type prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
	done    bool
}

func (p *prompter) answer(question, def string) string {
	fmt.Fprintf(p.w, "%s [%s]: ", question, def)
	if !p.scanner.Scan() {
		p.done = true
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

func (p *prompter) askInt(question string, def int) int {
	v, err := strconv.Atoi(p.answer(question, strconv.Itoa(def)))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (p *prompter) askBool(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	switch strings.ToLower(p.answer(question, hint)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Run generates cfg.Count passwords and prints one per line to out.
// Notices such as the copy confirmation go to notices.
func Run(cfg Config, out, notices io.Writer, clip Copier, color bool) error {
	if cfg.Count < 1 {
		return ErrInvalidCount
	}
	if !cfg.Selection.Any() {
		return crypto.ErrNoClassSelected
	}

	gen := service.NewGeneratorService(Limits, nil)
	req := requestFor(cfg)

	var last string
	for i := 0; i < cfg.Count; i++ {
		resp, err := gen.Generate(req)
		if err != nil {
			return err
		}
		last = resp.Password

		if cfg.ShowStrength {
			fmt.Fprintf(out, "%s\t%s\n", resp.Password, formatStrength(resp.Strength, color))
		} else {
			fmt.Fprintln(out, resp.Password)
		}
	}

	if cfg.Copy {
		if clip == nil {
			return errors.New("no clipboard available")
		}
		if err := clip.Copy(last); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(notices, "Password copied to clipboard!")
	}

	return nil
}

func requestFor(cfg Config) model.GenerateRequest {
	sel := cfg.Selection
	return model.GenerateRequest{
		Length:         cfg.Length,
		Uppercase:      &sel.Uppercase,
		Lowercase:      &sel.Lowercase,
		Digits:         &sel.Digits,
		Symbols:        &sel.Symbols,
		ExcludeSimilar: &sel.ExcludeSimilar,
	}
}

// formatStrength renders "Label (NN%)", colored with the strength's hex color
// as a 24-bit ANSI sequence when color is set.
func formatStrength(s crypto.Strength, color bool) string {
	text := fmt.Sprintf("%s (%d%%)", s.Label, s.Percent)
	if !color {
		return text
	}
	r, g, b, ok := parseHexColor(s.Color)
	if !ok {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}

func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
