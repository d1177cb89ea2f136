package log

const (
	KeyAppName       = "app"
	KeyCaller        = "caller"
	KeyCart          = "cart"
	KeyCartID        = "cartId"
	KeyConfig        = "config"
	KeyDbURI         = "dbUri"
	KeyImageURL      = "imageUrl"
	KeyProcess       = "process"
	KeyProduct       = "product"
	KeyProductID     = "productId"
	KeyProducts      = "products"
	KeyQuantity      = "quantity"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestID     = "requestId"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTag           = "tag"
	KeyToken         = "token"
	KeyUserID        = "userId"
)
