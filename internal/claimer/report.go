package claimer

import (
	"fmt"
	"strings"

	"github.com/farewell-protocol/farewell-claimer/internal/model"
	"github.com/farewell-protocol/farewell-claimer/internal/transport"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

// printSummary shows the run parameters before the final confirmation.
func printSummary(tcfg transport.Config, info *model.MessageInfo) {
	ui.Section("Summary")
	ui.Field("From", tcfg.Email)
	ui.Field("Recipients", strings.Join(info.Recipients, ", "))
	ui.Field("Content Hash", info.ContentHash)
	ui.Field("Subject", info.Subject)

	fmt.Println("  " + "Message Preview:")
	lines := strings.Split(info.Body, "\n")
	for i, line := range lines {
		if i >= 3 {
			break
		}
		ui.Muted("    " + truncate(line, 60))
	}
	fmt.Println()
}

// report prints the per-recipient outcomes after the send loop.
func report(outcomes []Outcome, dir string) {
	ui.Section("Results")

	var succeeded, failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		} else {
			succeeded = append(succeeded, o)
		}
	}

	if len(succeeded) > 0 {
		ui.Successf("%d email(s) sent successfully!", len(succeeded))
		fmt.Println()
		ui.Infof("Generated files in: %s/", dir)
		fmt.Println()
		for _, o := range succeeded {
			ui.Successf("%s", o.Recipient)
			ui.Muted("    .eml:  " + o.EMLPath)
			ui.Muted("    proof: " + o.ProofPath)
		}
	}

	if len(failed) > 0 {
		fmt.Println()
		ui.Errorf("%d email(s) failed:", len(failed))
		for _, o := range failed {
			ui.Errorf("%s: %v", o.Recipient, o.Err)
		}
	}
}

// printNextSteps explains how to use the artifacts to claim the reward.
func printNextSteps() {
	ui.Section("Next Steps")
	fmt.Println(`To claim your reward on Farewell:

  1. Go to the Farewell claim page
  2. For each recipient, upload the corresponding .eml file
  3. Click "Prove Delivery" for each recipient
  4. Once all recipients are proven, click "Claim Reward"`)
	fmt.Println()
	ui.Muted("The proof files (.json) can also be used to submit proofs manually\nif the UI upload doesn't work.")
	fmt.Println()
	ui.Successf("Thank you for using Farewell!")
}
