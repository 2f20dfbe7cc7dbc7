package claimer

import (
	"errors"

	"github.com/farewell-protocol/farewell-claimer/internal/model"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

// promptMessageInfo collects the message data interactively when no
// message file was given.
func promptMessageInfo() (*model.MessageInfo, error) {
	ui.Section("Message Information")
	ui.Infof("Enter the information from the decrypted Farewell message:")

	recipientsRaw, err := ui.Input(
		"Recipient email(s)",
		"Comma-separated for multiple recipients",
		"", true,
	)
	if err != nil {
		return nil, err
	}
	recipients := model.SplitRecipients(recipientsRaw)
	if len(recipients) == 0 {
		return nil, errors.New("no recipients specified")
	}

	hash, err := ui.Input(
		"Payload content hash",
		"From the contract, starts with 0x",
		"", true,
	)
	if err != nil {
		return nil, err
	}

	body, err := ui.Multiline("Message content", "The farewell message body")
	if err != nil {
		return nil, err
	}

	subject, err := ui.Input("Subject", "", model.DefaultSubject, false)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		subject = model.DefaultSubject
	}

	return &model.MessageInfo{
		Recipients:  recipients,
		ContentHash: model.NormalizeContentHash(hash),
		Body:        body,
		Subject:     subject,
	}, nil
}
