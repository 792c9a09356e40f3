// Package prompt reads validated values from an interactive console.
//
// A Prompter asks for one line at a time and keeps asking until the line
// matches the required pattern in full. It never gives up on its own: the
// only ways out are a conforming line or the end of the input stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// InvalidInputMessage is printed after every rejected line.
const InvalidInputMessage = "Invalid input, please try again."

// MaxLineLength is the longest line a Prompter accepts, in bytes and
// counting its line ending.
const MaxLineLength = 64 * 1024

var (
	// ErrInputClosed is returned when the input stream ends before a valid
	// line was read.
	ErrInputClosed = errors.New("input closed")

	// ErrLineTooLong is returned for a line over MaxLineLength. The rest of
	// the line has already been consumed, so the next read starts fresh.
	ErrLineTooLong = errors.New("input line too long")
)

// Pattern is a regular expression that must match an entire line.
type Pattern struct {
	re *regexp.Regexp
}

// Compile builds a full-line Pattern. Anchors inside expr are allowed but
// not required.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re}, nil
}

func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("prompt: %v", err))
	}
	return p
}

func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

func (p *Pattern) String() string {
	return p.re.String()
}

var (
	Integer = MustCompile(`\d+`)
	Date    = MustCompile(`\d{4}-\d{2}-\d{2}`)
	Decimal = MustCompile(`\d+(\.\d{1,2})?`)
	Text    = MustCompile(`.+`)
)

// Prompter writes prompts to out and reads answers line by line from in.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Out is the writer prompts are printed to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// ReadLine prints prompt and returns the next line without validation.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	var (
		line    []byte
		read    int
		tooLong bool
	)
	for {
		chunk, err := p.reader.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > MaxLineLength {
				tooLong, line = true, nil
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if read == 0 {
				return "", ErrInputClosed
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		break
	}

	if tooLong {
		return "", ErrLineTooLong
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(line), "\n"), "\r"), nil
}

// Ask prompts until a line fully matches pattern and returns that line as typed.
func (p *Prompter) Ask(prompt string, pattern *Pattern) (string, error) {
	for {
		line, err := p.ReadLine(prompt)
		if errors.Is(err, ErrLineTooLong) {
			fmt.Fprintln(p.out, InvalidInputMessage)
			continue
		}
		if err != nil {
			return "", err
		}
		if pattern.Match(line) {
			return line, nil
		}
		fmt.Fprintln(p.out, InvalidInputMessage)
	}
}

// AskInt prompts for a non-negative integer. Digit strings too large for
// an int are rejected like any other invalid line.
func (p *Prompter) AskInt(prompt string) (int, error) {
	for {
		line, err := p.Ask(prompt, Integer)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, InvalidInputMessage)
	}
}

// AskDecimal prompts for an amount with at most two fractional digits.
func (p *Prompter) AskDecimal(prompt string) (decimal.Decimal, error) {
	line, err := p.Ask(prompt, Decimal)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(line)
}

// AskDate prompts for a YYYY-MM-DD date and returns it as typed.
func (p *Prompter) AskDate(prompt string) (string, error) {
	return p.Ask(prompt, Date)
}

// AskText prompts for any non-empty line.
func (p *Prompter) AskText(prompt string) (string, error) {
	return p.Ask(prompt, Text)
}
