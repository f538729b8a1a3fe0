package gpio

import (
	"fmt"
	"sync"

	"github.com/op/go-logging"
	"github.com/warthog618/go-gpiocdev"
)

var log = logging.MustGetLogger("gpio")

// Line is a single output line
type Line interface {
	SetValue(value int) error
	Close() error
}

// Requester opens an output line on a chip
type Requester func(chip string, offset int, consumer string) (Line, error)

// RequestOutput requests a line as an output, initially low, using the
// GPIO character device
func RequestOutput(chip string, offset int, consumer string) (Line, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, err
	}
	return line, nil
}

// Bank is an ordered set of output lines, one per LED
type Bank struct {
	chip    string
	offsets []int
	lines   []Line
	values  []int
	mu      sync.Mutex
}

// NewBank requests one output line per offset on chip
func NewBank(chip string, offsets []int, consumer string) (*Bank, error) {
	return NewBankWith(RequestOutput, chip, offsets, consumer)
}

// NewBankWith is NewBank with a custom line requester
func NewBankWith(request Requester, chip string, offsets []int, consumer string) (*Bank, error) {
	b := &Bank{
		chip:    chip,
		offsets: append([]int(nil), offsets...),
		lines:   make([]Line, 0, len(offsets)),
		values:  make([]int, len(offsets)),
	}

	log.Infof("Requesting %d GPIO lines on %s", len(offsets), chip)
	for _, offset := range offsets {
		line, err := request(chip, offset, consumer)
		if err != nil {
			// Release the lines we already hold
			b.Close()
			return nil, fmt.Errorf("failed to request line %d on %s: %w", offset, chip, err)
		}
		b.lines = append(b.lines, line)
	}

	return b, nil
}

// Len returns the number of lines in the bank
func (b *Bank) Len() int {
	return len(b.offsets)
}

// Set drives line i to value (0 or 1). Unchanged values are not rewritten.
func (b *Bank) Set(i, value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i < 0 || i >= len(b.lines) {
		return fmt.Errorf("line index out of range: %d", i)
	}
	if value != 0 {
		value = 1
	}
	if b.values[i] == value {
		return nil
	}

	log.Debugf("Setting %s line %d to %d", b.chip, b.offsets[i], value)
	if err := b.lines[i].SetValue(value); err != nil {
		return fmt.Errorf("failed to set line %d: %w", b.offsets[i], err)
	}
	b.values[i] = value
	return nil
}

// Value returns the last value written to line i
func (b *Bank) Value(i int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.values[i]
}

// Close drives every line low and releases it
func (b *Bank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Infof("Releasing %d GPIO lines on %s", len(b.lines), b.chip)
	var first error
	for i, line := range b.lines {
		if err := line.SetValue(0); err != nil {
			// Ignore errors during cleanup, as the line may already be gone
			log.Warningf("Failed to clear line %d: %v", b.offsets[i], err)
		}
		if err := line.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close line %d: %w", b.offsets[i], err)
		}
	}
	b.lines = nil
	return first
}
