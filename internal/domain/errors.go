package domain

import "errors"

// Error is a domain error with a stable code. The code selects the
// user-facing message ("error.<code>" in the locale files).
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Code() string  { return e.code }

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Code returns the code of the first domain error in err's chain, or "".
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// Domain errors.
var (
	ErrGuildNotFound = newError("guild_not_found", "guild not found")
	ErrErrorNotFound = newError("error_not_found", "error reference not found")
	ErrSetupComplete = newError("setup_complete", "setup has already been completed")
	ErrSetupRequired = newError("setup_required", "setup has not been completed")

	ErrTagNotFound       = newError("tag_not_found", "tag not found")
	ErrTagExists         = newError("tag_exists", "tag already exists")
	ErrTagNameInvalid    = newError("tag_name_invalid", "tag names can only contain lower case letters")
	ErrTagNameTooLong    = newError("tag_name_too_long", "tag name too long")
	ErrTagContentEmpty   = newError("tag_content_empty", "tag content is empty")
	ErrTagContentTooLong = newError("tag_content_too_long", "tag content too long")
	ErrTagUnchanged      = newError("tag_unchanged", "tag content unchanged")
	ErrNotTagOwner       = newError("not_tag_owner", "only the tag owner can do that")

	ErrWarnNotFound      = newError("warn_not_found", "warn not found")
	ErrNoWarns           = newError("no_warns", "member has no warns")
	ErrWarnTypeNotFound  = newError("warntype_not_found", "warn type not found")
	ErrWarnTypeExists    = newError("warntype_exists", "warn type already exists")
	ErrWarnTypeInvalid   = newError("warntype_invalid", "warn types can only contain lower case letters")
	ErrWarnTypeTooLong   = newError("warntype_too_long", "warn type too long")
	ErrWarnTypeLimit     = newError("warntype_limit", "warn type limit reached")
	ErrWarnTypeUnchanged = newError("warntype_unchanged", "nothing to change")
	ErrPointsOutOfRange  = newError("points_out_of_range", "points out of range")
	ErrCommentTooLong    = newError("comment_too_long", "comment too long")
	ErrNoTargets         = newError("no_targets", "no valid targets")

	ErrUnknownModule    = newError("unknown_module", "unknown module")
	ErrUnknownAttribute = newError("unknown_attribute", "unknown attribute")
	ErrInvalidValue     = newError("invalid_value", "invalid value")
	ErrPrefixInvalid    = newError("prefix_invalid", "invalid prefix")
	ErrLocaleInvalid    = newError("locale_invalid", "unsupported locale")
	ErrMaxPointsRange   = newError("max_points_range", "max points out of range")
	ErrMaxStrikesRange  = newError("max_strikes_range", "max strikes out of range")
	ErrGateTextTooLong  = newError("gate_text_too_long", "gate text too long")

	ErrModuleActive       = newError("module_active", "module already active")
	ErrModuleInactive     = newError("module_inactive", "module not active")
	ErrNotActivatable     = newError("not_activatable", "module cannot be activated")
	ErrRulesChannelUnset  = newError("rules_channel_unset", "rules channel not set")
	ErrBlockingRoleUnset  = newError("blocking_role_unset", "blocking role not set")
	ErrMissingPermissions = newError("missing_permissions", "missing permissions")
)
