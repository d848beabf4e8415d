package special

import "github.com/larkwiki/larkwiki/wiki"

// logChangeMessages maps (log type, log action) to a description format
// string. Every message interpolates the acting user's page name; the two
// move messages take the move target as a second argument. Pairs missing
// from this table render as msgUnknownChange.
var logChangeMessages = map[string]map[string]string{
	wiki.LogTypeApproval: {
		wiki.LogActionApprove:   "approved by %s",
		wiki.LogActionUnapprove: "approval revoked by %s",
	},
	wiki.LogTypeDelete: {
		wiki.LogActionDelete:  "deleted by %s",
		wiki.LogActionRestore: "restored by %s",
	},
	wiki.LogTypeImport: {
		wiki.LogActionUpload: "imported by file upload by %s",
	},
	wiki.LogTypeMove: {
		wiki.LogActionMove:      "moved by %s to %s",
		wiki.LogActionMoveRedir: "moved by %s to %s over a redirect",
	},
	wiki.LogTypeProtect: {
		wiki.LogActionProtect:   "protected by %s",
		wiki.LogActionUnprotect: "unprotected by %s",
		wiki.LogActionModify:    "protection settings changed by %s",
	},
	wiki.LogTypeUpload: {
		wiki.LogActionUpload:    "new file uploaded by %s",
		wiki.LogActionOverwrite: "file overwritten by %s",
	},
}

const msgUnknownChange = "unknown change by %s"
const msgEditedBy = "edited by %s"
const msgEditedWithComment = "edited by %s with comment: %s"
