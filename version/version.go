/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ApplicationName is the name reported to software version requests.
const ApplicationName = "xmppcore"

// buildVersion can be overridden at link time:
//   go build -ldflags "-X github.com/atalk/xmppcore/version.buildVersion=1.2.3"
var buildVersion = "0.1.0"

// ApplicationVersion represents application version.
var ApplicationVersion = MustParse(buildVersion)

// SemanticVersion represents version information with Semantic Versioning specifications.
type SemanticVersion struct {
	major uint
	minor uint
	patch uint
}

// NewVersion initializes a new instance of SemanticVersion.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{major: major, minor: minor, patch: patch}
}

// Parse reads a 'major.minor.patch' string. A leading 'v' is accepted.
func Parse(s string) (*SemanticVersion, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 3 {
		return nil, errors.Errorf("version: malformed version string: %q", s)
	}
	var nums [3]uint
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "version: malformed version string: %q", s)
		}
		nums[i] = uint(n)
	}
	return NewVersion(nums[0], nums[1], nums[2]), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) *SemanticVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns a string that represents this instance.
func (v *SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// Compare returns -1, 0 or 1 depending on whether v is
// lower than, equal to or greater than v2.
func (v *SemanticVersion) Compare(v2 *SemanticVersion) int {
	for _, d := range [...][2]uint{{v.major, v2.major}, {v.minor, v2.minor}, {v.patch, v2.patch}} {
		switch {
		case d[0] < d[1]:
			return -1
		case d[0] > d[1]:
			return 1
		}
	}
	return 0
}

// IsEqual returns true if version is equal to v2.
func (v *SemanticVersion) IsEqual(v2 *SemanticVersion) bool { return v.Compare(v2) == 0 }

// IsLess returns true if version is less than v2.
func (v *SemanticVersion) IsLess(v2 *SemanticVersion) bool { return v.Compare(v2) < 0 }

// IsLessOrEqual returns true if version is less or equal than v2.
func (v *SemanticVersion) IsLessOrEqual(v2 *SemanticVersion) bool { return v.Compare(v2) <= 0 }

// IsGreater returns true if version is greater than v2.
func (v *SemanticVersion) IsGreater(v2 *SemanticVersion) bool { return v.Compare(v2) > 0 }

// IsGreaterOrEqual returns true if version is greater or equal than v2.
func (v *SemanticVersion) IsGreaterOrEqual(v2 *SemanticVersion) bool { return v.Compare(v2) >= 0 }
