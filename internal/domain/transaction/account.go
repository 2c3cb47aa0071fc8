package transaction

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Account is a profit-and-loss account from the closed bookkeeping vocabulary
type Account string

const (
	AccountMeals         Account = "식대(복리후생비)"
	AccountTravel        Account = "여비교통비"
	AccountVehicle       Account = "차량유지비"
	AccountSupplies      Account = "소모품비"
	AccountRent          Account = "지급임차료"
	AccountCommunication Account = "통신비"
	AccountUtilities     Account = "수도광열비"
	AccountTaxesDues     Account = "세금과공과"
	AccountAdvertising   Account = "광고선전비"
	AccountFees          Account = "수수료비용"
	AccountSalaries      Account = "급여/임금"
	AccountOther         Account = "기타"
	AccountGeneral       Account = "기타일반비용"
)

var knownAccounts = []Account{
	AccountMeals, AccountTravel, AccountVehicle, AccountSupplies, AccountRent,
	AccountCommunication, AccountUtilities, AccountTaxesDues, AccountAdvertising,
	AccountFees, AccountSalaries, AccountOther, AccountGeneral,
}

// Accounts returns the closed account vocabulary.
func Accounts() []Account {
	return append([]Account(nil), knownAccounts...)
}

// SuggestibleAccounts is the vocabulary offered to the categorization model.
func SuggestibleAccounts() []Account {
	return []Account{
		AccountMeals, AccountTravel, AccountVehicle, AccountSupplies, AccountRent,
		AccountCommunication, AccountUtilities, AccountTaxesDues, AccountAdvertising,
		AccountFees, AccountOther,
	}
}

// Known reports whether a belongs to the vocabulary.
func (a Account) Known() bool {
	for _, k := range knownAccounts {
		if k == a {
			return true
		}
	}
	return false
}

// Unassigned reports whether a still needs an account, i.e. it is empty or 기타.
func (a Account) Unassigned() bool {
	return a == "" || a == AccountOther
}

//go:embed aliases.yaml
var defaultAliases []byte

type aliasFile struct {
	Accounts []struct {
		Account Account  `yaml:"account"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"accounts"`
}

// Resolver maps free text coming from users, imports and the model onto the
// closed account vocabulary.
type Resolver struct {
	aliases map[string]Account
}

// NewResolver builds a resolver from a YAML alias table.
func NewResolver(data []byte) (*Resolver, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse account aliases: %w", err)
	}
	r := &Resolver{aliases: make(map[string]Account)}
	for _, entry := range f.Accounts {
		if !entry.Account.Known() {
			return nil, fmt.Errorf("alias table references unknown account %q", entry.Account)
		}
		for _, alias := range entry.Aliases {
			r.aliases[normalizeAlias(alias)] = entry.Account
		}
	}
	return r, nil
}

// LoadResolver reads an alias table from path, layered over the embedded defaults.
func LoadResolver(path string) (*Resolver, error) {
	base := DefaultResolver()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read account aliases: %w", err)
	}
	extra, err := NewResolver(data)
	if err != nil {
		return nil, err
	}
	for k, v := range extra.aliases {
		base.aliases[k] = v
	}
	return base, nil
}

// DefaultResolver returns a resolver over the embedded alias table.
func DefaultResolver() *Resolver {
	r, err := NewResolver(defaultAliases)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the account for raw and whether it was recognised.
// Unrecognised input resolves to AccountOther.
func (r *Resolver) Resolve(raw string) (Account, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", true
	}
	if a := Account(trimmed); a.Known() {
		return a, true
	}
	if a, ok := r.aliases[normalizeAlias(trimmed)]; ok {
		return a, true
	}
	return AccountOther, false
}

func normalizeAlias(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
