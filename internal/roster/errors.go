package roster

import "errors"

// ErrRatioGuard is returned when the real roster is too large relative to
// the target team size for the padding arithmetic to make sense.
var ErrRatioGuard = errors.New("the number of member is too many than max_team_num")

// ErrMalformedInput is returned when a student record or constraint
// bundle fails validation: an out-of-range score, a dislikes index
// pointing outside the roster, or a contradictory quota.
var ErrMalformedInput = errors.New("input malformed")
