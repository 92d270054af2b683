package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// OrderStatusProcessing is the status every freshly placed order gets.
const OrderStatusProcessing = "Processing"
