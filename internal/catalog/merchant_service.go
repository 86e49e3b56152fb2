package catalog

import (
	"context"

	"go.uber.org/zap"
)

// MerchantStore is the query surface of the merchant service. Rows carry
// numeric payment codes; the service turns them into display labels.
type MerchantStore interface {
	SellList(ctx context.Context) ([]MerchantRow, error)
	MerchantSellersOf(ctx context.Context, itemID int) ([]MerchantOffer, error)
	MerchantItems(ctx context.Context, merchantID int) ([]MerchantItem, error)
}

// PaymentNames maps a payment type code to its display label.
type PaymentNames interface {
	PaymentType(code int) string
}

// MerchantService serves the global sell list and per-merchant inventories.
// It also satisfies SellerStore and MerchantInventoryStore for the item and
// monster services, so payment labels are applied in one place.
type MerchantService struct {
	store    MerchantStore
	icons    IconResolver
	payments PaymentNames
	log      *zap.Logger
}

func NewMerchantService(store MerchantStore, icons IconResolver, payments PaymentNames, log *zap.Logger) *MerchantService {
	return &MerchantService{store: store, icons: icons, payments: payments, log: log.Named("merchants")}
}

// SellList returns every merchant sell line with portraits resolved.
func (s *MerchantService) SellList(ctx context.Context) ([]MerchantRow, error) {
	rows, err := s.store.SellList(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].MName = CleanName(rows[i].MName)
		rows[i].Portrait = s.icons.MonsterPortrait(rows[i].MID)
	}
	return rows, nil
}

// SellersOf returns the merchants selling one item.
func (s *MerchantService) SellersOf(ctx context.Context, itemID int) ([]MerchantOffer, error) {
	offers, err := s.store.MerchantSellersOf(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		offers[i].MerchantName = CleanName(offers[i].MerchantName)
		offers[i].PaymentType = s.payments.PaymentType(offers[i].PaymentCode)
	}
	return offers, nil
}

// ItemsOfMerchant returns the inventory of one merchant with payment labels
// and item icons applied.
func (s *MerchantService) ItemsOfMerchant(ctx context.Context, merchantID int) ([]MerchantItem, error) {
	items, err := s.store.MerchantItems(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].PaymentType = s.payments.PaymentType(items[i].PaymentCode)
		if items[i].IconFile != "" {
			items[i].Picture = s.icons.ItemIcon(items[i].IconFile, items[i].IconX, items[i].IconY)
		} else {
			items[i].Picture = s.icons.ItemIconDefault()
		}
	}
	return items, nil
}
