package recruitment

type CreatePostingRequest struct {
	OfferTitle       string `json:"offre_title" binding:"required,notblank"`
	ShortDescription string `json:"short_description" binding:"required,notblank"`
	Deadline         string `json:"deadline" binding:"required,datetime=2006-01-02"`
	City             string `json:"city" binding:"required,oneof=rabat fes rabat&fes rabat_and_fes"`
	AttachmentName   string `json:"attachment_name" binding:"required,notblank"`
}

type UpdatePostingRequest struct {
	OfferTitle       string `json:"offre_title" binding:"required,notblank"`
	ShortDescription string `json:"short_description" binding:"required,notblank"`
	Deadline         string `json:"deadline" binding:"required,datetime=2006-01-02"`
	City             string `json:"city" binding:"required,oneof=rabat fes rabat&fes rabat_and_fes"`
	AttachmentName   string `json:"attachment_name" binding:"required,notblank"`
}

type PostingResponse struct {
	ID               int    `json:"id"`
	OfferTitle       string `json:"offre_title"`
	ShortDescription string `json:"short_description"`
	Deadline         string `json:"deadline"`
	City             string `json:"city"`
	CityLabel        string `json:"city_label"`
	AttachmentName   string `json:"attachment_name"`
}

func (r CreatePostingRequest) ToPosting() (Posting, error) {
	return toPosting(0, r.OfferTitle, r.ShortDescription, r.Deadline, r.City, r.AttachmentName)
}

func (r UpdatePostingRequest) ToPosting(id int) (Posting, error) {
	return toPosting(id, r.OfferTitle, r.ShortDescription, r.Deadline, r.City, r.AttachmentName)
}

func toPosting(id int, title, description, deadline, city, attachment string) (Posting, error) {
	d, err := ParseDeadline(deadline)
	if err != nil {
		return Posting{}, err
	}
	c, err := ParseCity(city)
	if err != nil {
		return Posting{}, err
	}
	return Posting{
		ID:               id,
		OfferTitle:       title,
		ShortDescription: description,
		Deadline:         d,
		City:             c,
		AttachmentName:   attachment,
	}, nil
}

func mapToResponse(p Posting) PostingResponse {
	resp := PostingResponse{
		ID:               p.ID,
		OfferTitle:       p.OfferTitle,
		ShortDescription: p.ShortDescription,
		City:             string(p.City),
		CityLabel:        p.City.Label(),
		AttachmentName:   p.AttachmentName,
	}
	if !p.Deadline.IsZero() {
		resp.Deadline = p.Deadline.Format(DateLayout)
	}
	return resp
}

func mapToListResponse(postings []Posting) []PostingResponse {
	resp := make([]PostingResponse, 0, len(postings))
	for _, p := range postings {
		resp = append(resp, mapToResponse(p))
	}
	return resp
}
