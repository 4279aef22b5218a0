package dto

type CreateFilmEnquiryRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Title           string   `json:"title"`
	Synopsis        string   `json:"synopsis"`
	ProductionHouse string   `json:"productionHouse"`
	Distributor     string   `json:"distributor"`
	ReleaseDate     string   `json:"releaseDate"`
	TrailerURL      string   `json:"trailerUrl"`
	ContentTypeID   string   `json:"contentTypeId"`
	GenreIDs        []string `json:"genreIds"`
	CountryID       string   `json:"countryId"`
	LanguageID      string   `json:"languageId"`
}

type UpdateFilmEnquiryRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Role            *string  `json:"role"`
	Title           *string  `json:"title"`
	Synopsis        *string  `json:"synopsis"`
	ProductionHouse *string  `json:"productionHouse"`
	Distributor     *string  `json:"distributor"`
	ReleaseDate     *string  `json:"releaseDate"`
	TrailerURL      *string  `json:"trailerUrl"`
	ContentTypeID   *string  `json:"contentTypeId"`
	GenreIDs        []string `json:"genreIds"`
	CountryID       *string  `json:"countryId"`
	LanguageID      *string  `json:"languageId"`
}
