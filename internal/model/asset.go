package model

// Asset identifies which side of the pair a balance is denominated in.
// Keep these values stable; they are intended for CSV/JSON output.
type Asset string

const (
	AssetBTC  Asset = "BTC"
	AssetUSDT Asset = "USDT"
)

// ProductKind selects the direction of a dual-investment structured product.
type ProductKind string

const (
	// SellHigh is a covered-call style product: hold BTC, sell upside.
	SellHigh ProductKind = "SELL_HIGH"
	// BuyLow is a cash-secured-put style product: hold USDT, buy the dip.
	BuyLow ProductKind = "BUY_LOW"
)
