package ecpay

// Field names as documented by the gateway. Casing matters.
const (
	FieldMerchantID        = "MerchantID"
	FieldMerchantTradeNo   = "MerchantTradeNo"
	FieldMerchantTradeDate = "MerchantTradeDate"
	FieldPaymentType       = "PaymentType"
	FieldTotalAmount       = "TotalAmount"
	FieldTradeDesc         = "TradeDesc"
	FieldItemName          = "ItemName"
	FieldReturnURL         = "ReturnURL"
	FieldClientBackURL     = "ClientBackURL"
	FieldChoosePayment     = "ChoosePayment"
	FieldEncryptType       = "EncryptType"
	FieldCheckMacValue     = "CheckMacValue"

	FieldRtnCode  = "RtnCode"
	FieldRtnMsg   = "RtnMsg"
	FieldTradeNo  = "TradeNo"
	FieldTradeAmt = "TradeAmt"
)

const (
	paymentTypeAIO   = "aio"
	choosePaymentAll = "ALL"
	encryptSHA256    = "1"

	// rtnCodeSuccess is the only result code that means the payment went through.
	rtnCodeSuccess = "1"

	tradeDateLayout = "2006/01/02 15:04:05"
)

// Acknowledgement bodies expected by the gateway on the callback response.
const (
	AckOK   = "1|OK"
	AckFail = "0|FAIL"
)
