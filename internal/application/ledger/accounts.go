// Package ledger implements the double-entry journal engine: entry
// validation, the standard posting patterns for sales, purchases, returns
// and payments, and the derived per-account balances and statements.
// Amounts are decimals rounded to two places; an entry whose debit and
// credit totals differ is rejected before it ever reaches storage.
package ledger

// System account codes. Customer and supplier accounts are not listed here;
// their UUID strings are used directly as journal line account IDs.
const (
	AccountCash            = "CASH"
	AccountBank            = "BANK"
	AccountSales           = "SALES"
	AccountSalesReturns    = "SALES_RETURNS"
	AccountPurchases       = "PURCHASES"
	AccountPurchaseReturns = "PURCHASE_RETURNS"
	AccountSGSTOutput      = "SGST_OUTPUT"
	AccountCGSTOutput      = "CGST_OUTPUT"
	AccountSGSTInput       = "SGST_INPUT"
	AccountCGSTInput       = "CGST_INPUT"
)

// SystemAccounts maps every system account code to its display name.
// Seeded into the accounts table at migration.
var SystemAccounts = map[string]string{
	AccountCash:            "Cash",
	AccountBank:            "Bank",
	AccountSales:           "Sales",
	AccountSalesReturns:    "Sales Returns",
	AccountPurchases:       "Purchases",
	AccountPurchaseReturns: "Purchase Returns",
	AccountSGSTOutput:      "SGST Output",
	AccountCGSTOutput:      "CGST Output",
	AccountSGSTInput:       "SGST Input",
	AccountCGSTInput:       "CGST Input",
}

// PaymentAccount maps a tender name to the account it posts against.
// Anything unrecognised is treated as cash.
func PaymentAccount(method string) (id, name string) {
	switch method {
	case "bank", "card", "upi":
		return AccountBank, SystemAccounts[AccountBank]
	default:
		return AccountCash, SystemAccounts[AccountCash]
	}
}
