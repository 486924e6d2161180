package exchange

import (
	"fmt"

	"github.com/krobus00/roostoo-tester/internal/entity"
)

var (
	GlobalExchangeRegistry = make(map[entity.ExchangeName]entity.Exchange)
)

func RegisterExchange(name entity.ExchangeName, exchange entity.Exchange) {
	GlobalExchangeRegistry[name] = exchange
}

func GetExchange(name entity.ExchangeName) (entity.Exchange, error) {
	ex, ok := GlobalExchangeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrExchangeNotRegistered)
	}

	return ex, nil
}
