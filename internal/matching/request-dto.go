package matching

// AcceptOfferRequest is a seller's direct acceptance of an offer: the
// seat assignment they will deliver. The offer id comes from the path.
type AcceptOfferRequest struct {
	Section         string   `json:"section" binding:"required"`
	Row             string   `json:"row"`
	Seats           []string `json:"seats" binding:"required,min=1,dive,required"`
	DeliveryMethod  string   `json:"delivery_method" binding:"required,delivery_method"`
	DeliveryDetails string   `json:"delivery_details"`
}
