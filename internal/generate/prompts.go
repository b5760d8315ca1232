package generate

import (
	"fmt"
	"strings"

	"github.com/Samir-atra/courtesy-agent/internal/contacts"
	"github.com/Samir-atra/courtesy-agent/pkg/llm"
)

const defaultPromptTemplate = `You draft short, personal courtesy messages on behalf of a sender.
Be warm and professional, not effusive. Two or three sentences is plenty.`

const draftContract = `IMPORTANT: Return ONLY a raw JSON object with keys 'subject' and 'body'. ` +
	`Do not include any markdown formatting (like ` + "```json" + `), explanations, or templates. ` +
	`The 'body' should be the ready-to-send message content.`

func buildMessages(template string, contact contacts.Contact, messageContext, senderName string) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipient Name: %s\n", contact.Name)
	fmt.Fprintf(&b, "Context: %s\n", messageContext)
	if senderName != "" {
		fmt.Fprintf(&b, "Sender Name: %s\n", senderName)
	}
	b.WriteString("\n")
	b.WriteString(draftContract)

	return []llm.Message{
		{Role: "system", Content: template},
		{Role: "user", Content: b.String()},
	}
}
