package intacct

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the deployment-specific values: which tab to attach to, the
// frame hosting the application, and the bank/card entities payments are
// drawn from. These vary per company file, so they live in a yaml file
// rather than in code.
type Profile struct {
	URLSubstring    string `yaml:"url_substring"`
	FrameSelector   string `yaml:"frame_selector"`
	BankLabel       string `yaml:"bank_label"`
	CreditCardLabel string `yaml:"credit_card_label"`
}

func DefaultProfile() Profile {
	return Profile{
		URLSubstring:    "www-p504.intacct.com",
		FrameSelector:   "#iamain",
		BankLabel:       "CK_Operating x4047--Truist",
		CreditCardLabel: "CC_Truist",
	}
}

// LoadProfile reads a profile file, filling unset fields from the defaults.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if p.URLSubstring == "" || p.FrameSelector == "" {
		return Profile{}, fmt.Errorf("profile must set url_substring and frame_selector")
	}
	return p, nil
}
