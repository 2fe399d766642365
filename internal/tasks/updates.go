package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase     Phase  // Operation phase
	Processed int    // Items attempted so far
	Total     int    // Total items in the operation
	Message   string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	BulkSave Phase = iota
	BulkDiscard
	ImportURLs
	ImportChannels
)

func (p Phase) String() string {
	switch p {
	case BulkSave:
		return "bulk_save"
	case BulkDiscard:
		return "bulk_discard"
	case ImportURLs:
		return "import_urls"
	case ImportChannels:
		return "import_channels"
	default:
		return ""
	}
}

// verb returns the progress-message verb for a phase.
func (p Phase) verb() string {
	switch p {
	case BulkSave:
		return "Saving"
	case BulkDiscard:
		return "Discarding"
	case ImportURLs, ImportChannels:
		return "Importing"
	default:
		return "Processing"
	}
}

func chunkUpdate(phase Phase, processed, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:     phase,
		Processed: processed,
		Total:     total,
		Message:   fmt.Sprintf("%s... (%d/%d)", phase.verb(), processed, total),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
