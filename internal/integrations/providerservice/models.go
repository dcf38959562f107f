package providerservice

// Provider модель провайдера из ProviderService
type Provider struct {
	ID          int64  `json:"id"`
	OwnerUserID int64  `json:"owner_user_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

// Service модель услуги провайдера из ProviderService
type Service struct {
	ID         int64    `json:"id"`
	ProviderID int64    `json:"provider_id"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price,omitempty"`
}

// ErrorResponse модель ошибки от ProviderService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
