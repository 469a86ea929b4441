package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/huimingz/commitbuddy/internal/log"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Outcome reports where a message ended up
type Outcome int

const (
	// OutcomeFailed means the message was neither inserted nor copied
	OutcomeFailed Outcome = iota
	// OutcomeInserted means the inserter accepted the message
	OutcomeInserted
	// OutcomeCopiedToClipboard means the message was copied instead of inserted
	OutcomeCopiedToClipboard
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "Inserted"
	case OutcomeCopiedToClipboard:
		return "CopiedToClipboard"
	default:
		return "Failed"
	}
}

// Inserter places a message where the commit will pick it up
type Inserter interface {
	Name() string
	Insert(ctx context.Context, message string) error
}

// Committer is the part of the git executor CommitInserter needs
type Committer interface {
	Commit(ctx context.Context, message string) error
}

// CommitInserter commits the staged changes with the message
type CommitInserter struct {
	Git Committer
}

// Name returns the inserter name
func (i *CommitInserter) Name() string {
	return "git commit"
}

// Insert runs git commit -m
func (i *CommitInserter) Insert(ctx context.Context, message string) error {
	return i.Git.Commit(ctx, message)
}

// FileInserter writes the message into a commit message file, as handed to
// a prepare-commit-msg hook. Existing content (git's comment template) is
// kept below the message.
type FileInserter struct {
	Path string
}

// Name returns the inserter name
func (i *FileInserter) Name() string {
	return "message file"
}

// Insert writes message to the top of the file
func (i *FileInserter) Insert(ctx context.Context, message string) error {
	existing, err := os.ReadFile(i.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", i.Path, err)
	}

	content := message + "\n"
	if len(existing) > 0 {
		content += "\n" + string(existing)
	}

	if err := os.WriteFile(i.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", i.Path, err)
	}
	return nil
}

// Publisher hands the selected message to an inserter, falling back to the
// clipboard when there is no inserter or insertion fails
type Publisher struct {
	inserter Inserter
}

// NewPublisher creates a Publisher; a nil inserter publishes to the clipboard only
func NewPublisher(inserter Inserter) *Publisher {
	return &Publisher{inserter: inserter}
}

// Publish delivers message and reports the outcome. An error is returned
// only with OutcomeFailed.
func (p *Publisher) Publish(ctx context.Context, message string) (Outcome, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return OutcomeFailed, errors.New("nothing to publish: message is empty")
	}

	var insertErr error
	if p.inserter != nil {
		insertErr = p.inserter.Insert(ctx, message)
		if insertErr == nil {
			log.Debug("Message published via %s", p.inserter.Name())
			return OutcomeInserted, nil
		}
		if ctx.Err() != nil {
			return OutcomeFailed, insertErr
		}
		log.Warn("%s failed, copying to clipboard instead: %v", p.inserter.Name(), insertErr)
		insertErr = fmt.Errorf("%s: %w", p.inserter.Name(), insertErr)
	}

	if err := clipboardWriteAll(message); err != nil {
		return OutcomeFailed, errors.Join(insertErr, fmt.Errorf("clipboard: %w", err))
	}
	return OutcomeCopiedToClipboard, nil
}
