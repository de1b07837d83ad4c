// Package directory resolves target references against the platform
// directory capability.
package directory

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/redcell-sec/reportbot/src/shared/platform"
)

var (
	// ErrNotFound means no entity matched the reference. Expected in
	// adversarial use against nonexistent handles.
	ErrNotFound = errors.New("target not found")
	// ErrInvalidTarget means the reference is neither a numeric id nor a
	// handle-shaped token.
	ErrInvalidTarget = errors.New("invalid target format")
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

const (
	noName  = "No Name"
	noTitle = "No Title"
)

// TargetInfo is the normalized description of a resolved entity.
type TargetInfo struct {
	Kind   string // user, channel or group
	ID     int64
	Handle string
	Title  string
}

// Resolve turns a target reference into a TargetInfo. Numeric references
// resolve by platform id, handle-shaped ones by name. Lookup faults
// collapse into ErrNotFound: from the reporter's side a flaky lookup and a
// missing entity read the same, and resending the command is the retry.
func Resolve(ctx context.Context, dir platform.Directory, targetRef string) (TargetInfo, error) {
	ref := strings.TrimSpace(targetRef)
	if ref == "" {
		return TargetInfo{}, ErrInvalidTarget
	}

	var (
		ent platform.Entity
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		ent, err = dir.ResolveID(ctx, id)
	} else if handlePattern.MatchString(ref) {
		ent, err = dir.ResolveHandle(ctx, ref)
	} else {
		return TargetInfo{}, ErrInvalidTarget
	}

	if err != nil {
		if !errors.Is(err, platform.ErrNotFound) {
			log.Printf("directory lookup failed for %q: %v", ref, err)
		}
		return TargetInfo{}, ErrNotFound
	}

	return fromEntity(ent), nil
}

func fromEntity(ent platform.Entity) TargetInfo {
	switch e := ent.(type) {
	case platform.User:
		title := strings.TrimSpace(e.FirstName + " " + e.LastName)
		if title == "" {
			title = noName
		}
		return TargetInfo{Kind: "user", ID: e.ID, Handle: e.Handle, Title: title}
	case platform.Channel:
		return TargetInfo{Kind: "channel", ID: e.ID, Handle: e.Handle, Title: orTitle(e.Title)}
	case platform.Group:
		return TargetInfo{Kind: "group", ID: e.ID, Handle: e.Handle, Title: orTitle(e.Title)}
	}
	// Unknown entity shapes default to group.
	return TargetInfo{Kind: "group", Title: noTitle}
}

func orTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return noTitle
	}
	return title
}
