package rename

import (
	"errors"

	"github.com/m3rciful/dobot/core/telegram/format"
)

// maxDetail keeps error details well inside Telegram's message limit.
const maxDetail = 300

func detail(err error) string {
	return format.Code(format.Truncate(err.Error(), maxDetail))
}

func lookupFailedText(err error) string {
	return "⚠️ Failed to load account or droplet: " + detail(err)
}

func promptText(current string) string {
	return format.Lines(
		"<b>✏️ Rename Droplet</b>",
		"🏷️ Current name: "+format.Code(current),
		"📝 Send the new name for this droplet.\n"+
			"It must be 3-63 characters long and may only contain letters, digits, hyphens and underscores.",
	)
}

func invalidNameText(err error) string {
	reason := "The name may only contain letters, digits, hyphens and underscores."
	if errors.Is(err, ErrNameLength) {
		reason = "The name must be 3-63 characters long."
	}
	return "❌ " + reason + " Send another name, or press Cancel on the message above."
}

func accountFailedText(err error) string {
	return "⚠️ Failed to load account: " + detail(err)
}

const (
	processingText = "🔄 Renaming droplet..."
	busyText       = "⏳ A rename of this droplet is already in progress."
)

func successText(oldName, newName string) string {
	return format.Lines(
		"✅ <b>Droplet renamed!</b>",
		"🏷️ Old name: "+format.Code(oldName)+"\n🏷️ New name: "+format.Code(newName),
	)
}

func renameFailedText(err error) string {
	return format.Lines(
		"❌ <b>Failed to rename droplet</b>",
		"Error: "+detail(err),
	)
}

const (
	noMessageAlert  = "This button only works on bot messages"
	badPayloadAlert = "This button is outdated, open the droplet again"
)
