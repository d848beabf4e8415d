package wiki

import (
	"encoding/json"
	"time"
)

// Log types recorded by the platform. Each type has a small set of actions.
const (
	LogTypeApproval = "approval"
	LogTypeDelete   = "delete"
	LogTypeImport   = "import"
	LogTypeMove     = "move"
	LogTypeProtect  = "protect"
	LogTypeUpload   = "upload"
)

// Log actions. Actions are only meaningful within their type.
const (
	LogActionApprove   = "approve"
	LogActionUnapprove = "unapprove"
	LogActionDelete    = "delete"
	LogActionRestore   = "restore"
	LogActionUpload    = "upload"
	LogActionMove      = "move"
	LogActionMoveRedir = "move_redir"
	LogActionProtect   = "protect"
	LogActionUnprotect = "unprotect"
	LogActionModify    = "modify"
	LogActionOverwrite = "overwrite"
)

// LogEntry records an administrative action against a page. Entries are
// keyed by namespace and title rather than page ID so that they survive
// page deletion.
type LogEntry struct {
	ID        int       `db:"id"`
	Type      string    `db:"log_type"`
	Action    string    `db:"log_action"`
	Namespace int       `db:"namespace"`
	Title     string    `db:"title"`
	ActorName string    `db:"actor_name"`
	Params    string    `db:"params"`
	Created   time.Time `db:"created"`
}

// moveParams is the JSON blob stored in Params for move log entries.
type moveParams struct {
	Target          string `json:"target"`
	TargetNamespace int    `json:"target_ns"`
}

// MoveTargetFromParams extracts the destination page name from a move log
// entry's opaque parameter blob.
func MoveTargetFromParams(params string) (string, error) {
	var mp moveParams
	if err := json.Unmarshal([]byte(params), &mp); err != nil {
		return "", err
	}
	target, err := NewTitle(mp.Target, mp.TargetNamespace)
	if err != nil {
		return "", err
	}
	return target.FullText(), nil
}

// EncodeMoveParams builds the parameter blob for a move log entry.
func EncodeMoveParams(target Title) (string, error) {
	raw, err := json.Marshal(moveParams{Target: target.Text, TargetNamespace: target.Namespace})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
