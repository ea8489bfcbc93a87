package domain

import (
	"fmt"
	"strings"
)

const (
	CrewXPMessage        = "You gain some experience by watching your crew work."
	CargoFullCrewMessage = "Your crewmate on the salvaging hook cannot salvage as the cargo hold is full."
	CrystalMoteMessage   = "Your crystal extractor has harvested a crystal mote!"
	HookOverheadPrefix   = "Managed to hook some salvage"
)

type ChatChannel string

const (
	ChatChannelGame  ChatChannel = "game"
	ChatChannelSpam  ChatChannel = "spam"
	ChatChannelModal ChatChannel = "modal"
	ChatChannelOther ChatChannel = "other"
)

func ParseChatChannel(raw string) (ChatChannel, error) {
	switch channel := ChatChannel(strings.ToLower(strings.TrimSpace(raw))); channel {
	case ChatChannelGame, ChatChannelSpam, ChatChannelModal, ChatChannelOther:
		return channel, nil
	case "":
		return ChatChannelGame, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChatChannel, raw)
	}
}

// Observed reports whether lines on the channel carry game signals.
func (c ChatChannel) Observed() bool {
	switch c {
	case ChatChannelGame, ChatChannelSpam, ChatChannelModal:
		return true
	default:
		return false
	}
}

func ChatChannels() []string {
	return []string{string(ChatChannelGame), string(ChatChannelSpam), string(ChatChannelModal), string(ChatChannelOther)}
}

func IsCrewXPMessage(clean string) bool {
	return clean == CrewXPMessage
}

// IsCargoFullMessage matches the crewmate's hook message and any other line
// mentioning a full cargo hold.
func IsCargoFullMessage(clean string) bool {
	if clean == CargoFullCrewMessage {
		return true
	}

	lower := strings.ToLower(clean)
	return strings.Contains(lower, "cargo hold") && strings.Contains(lower, "full")
}

func IsCrystalMoteMessage(clean string) bool {
	return clean == CrystalMoteMessage
}

func IsHookOverhead(text string) bool {
	return strings.HasPrefix(RemoveTags(text), HookOverheadPrefix)
}

type SessionBoundaryKind string

const (
	SessionBoundaryLoginScreen SessionBoundaryKind = "login_screen"
	SessionBoundaryWorldHop    SessionBoundaryKind = "world_hop"
)

func ParseSessionBoundary(raw string) (SessionBoundaryKind, error) {
	switch kind := SessionBoundaryKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case SessionBoundaryLoginScreen, SessionBoundaryWorldHop:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSessionBoundary, raw)
	}
}
