// Package billfile loads a bill description from a YAML, JSON or TOML file and
// turns it into a ledger.
//
// A bill file names participants and refers to them by name in each item:
//
//	participants: [Alice, Bob, Carol]
//	items:
//	  - name: Pizza
//	    price: 30000
//	    sharedBy: [Alice, Bob, Carol]
//	account:
//	  bank: Kakao Bank
//	  number: 3333-01-1234567
package billfile

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/mmynk/dutchpay/internal/ledger"
	"github.com/mmynk/dutchpay/internal/models"
)

// ErrUnknownSharer is returned when an item names someone who is not a participant.
var ErrUnknownSharer = errors.New("unknown sharer")

// Bill is the decoded content of a bill file.
type Bill struct {
	Participants []string `mapstructure:"participants" validate:"min=2,max=20,unique,dive,required"`
	Items        []Item   `mapstructure:"items" validate:"dive"`
	Account      Account  `mapstructure:"account"`
}

// Item is one expense line of a bill file. Price is kept as text so that
// values like "12000" and 12000 decode the same way.
type Item struct {
	Name     string   `mapstructure:"name" validate:"required"`
	Price    string   `mapstructure:"price" validate:"required"`
	SharedBy []string `mapstructure:"sharedBy" validate:"min=1,dive,required"`
}

// Account is the optional settlement account.
type Account struct {
	Bank   string `mapstructure:"bank"`
	Number string `mapstructure:"number"`
}

var validate = validator.New()

// Load reads and validates the bill file at path. The format is picked from
// the file extension.
func Load(path string) (*Bill, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read bill file: %w", err)
	}

	bill := &Bill{}
	if err := v.Unmarshal(bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill file: %w", err)
	}
	if err := validate.Struct(bill); err != nil {
		return nil, fmt.Errorf("invalid bill file: %w", err)
	}
	return bill, nil
}

// Ledger builds an active ledger holding the bill's participants, items and
// account. Participants get ids in file order and are renamed to their names.
func (b *Bill) Ledger() (*ledger.Ledger, error) {
	l := ledger.New()
	participants, err := l.InitParticipants(len(b.Participants))
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(participants))
	for i, p := range participants {
		name := b.Participants[i]
		if err := l.RenameParticipant(p.ID, name); err != nil {
			return nil, err
		}
		ids[name] = p.ID
	}

	for _, item := range b.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q has price %q", ledger.ErrInvalidItem, item.Name, item.Price)
		}

		sharerIDs := make([]string, 0, len(item.SharedBy))
		for _, name := range item.SharedBy {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("%w: item %q is shared by %q", ErrUnknownSharer, item.Name, name)
			}
			sharerIDs = append(sharerIDs, id)
		}

		if _, err := l.AddItem(item.Name, price, sharerIDs); err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Name, err)
		}
	}

	if err := l.SetSettlementAccount(models.SettlementAccount{
		BankName:      b.Account.Bank,
		AccountNumber: b.Account.Number,
	}); err != nil {
		return nil, err
	}
	return l, nil
}
