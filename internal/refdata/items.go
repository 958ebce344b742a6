package refdata

// User is the audit user embedded in some resources.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Color struct {
	ColorID      int    `json:"colorId"`
	CreatedDate  string `json:"createdDate"`
	ModifiedDate string `json:"modifiedDate"`
	ColorName    string `json:"colorName"`
	ColorValue   string `json:"colorValue"`
	CreatedBy    int    `json:"createdBy"`
	ModifiedBy   int    `json:"modifiedBy"`
}

type DateFormat struct {
	DateFormatID      int    `json:"dateFormatId"`
	CreatedDate       string `json:"createdDate"`
	ModifiedDate      string `json:"modifiedDate"`
	FormatName        string `json:"formatName"`
	FormatDescription string `json:"formatDescription"`
	CreatedBy         int    `json:"createdBy"`
	ModifiedBy        int    `json:"modifiedBy"`
}

type FramingStyle struct {
	FramingStyleID     int    `json:"framingStyleId"`
	CreatedDate        string `json:"createdDate"`
	ModifiedDate       string `json:"modifiedDate"`
	FramingStyleName   string `json:"framingStyleName"`
	FramingDescription string `json:"framingDescription"`
	CreatedBy          int    `json:"createdBy"`
	ModifiedBy         int    `json:"modifiedBy"`
}

type LetteringStyle struct {
	LetteringStyleID     int    `json:"letteringStyleId"`
	CreatedDate          string `json:"createdDate"`
	ModifiedDate         string `json:"modifiedDate"`
	LetteringStyleName   string `json:"letteringStyleName"`
	LetteringDescription string `json:"letteringDescription"`
	CreatedBy            int    `json:"createdBy"`
	ModifiedBy           int    `json:"modifiedBy"`
}

type PostalFacility struct {
	PostalFacilityID int      `json:"postalFacilityId"`
	ReferenceCode    string   `json:"referenceCode"`
	CurrentName      string   `json:"currentName"`
	CurrentType      string   `json:"currentType"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

type PostalFacilityIdentity struct {
	PostalFacilityIdentityID int      `json:"postalFacilityIdentityId"`
	Coordinates              any      `json:"coordinates"`
	CreatedBy                User     `json:"createdBy"`
	ModifiedBy               User     `json:"modifiedBy"`
	CreatedDate              string   `json:"createdDate"`
	ModifiedDate             string   `json:"modifiedDate"`
	EffectiveFromDate        string   `json:"effectiveFromDate"`
	EffectiveToDate          *string  `json:"effectiveToDate"`
	FacilityName             string   `json:"facilityName"`
	FacilityType             string   `json:"facilityType"`
	IsOperational            bool     `json:"isOperational"`
	DiscontinuationReason    string   `json:"discontinuationReason"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	Notes                    string   `json:"notes"`
	PostalFacility           int      `json:"postalFacility"`
}

type PostcoverImage struct {
	PostcoverImageID int    `json:"postcoverImageId"`
	OriginalFilename string `json:"originalFilename"`
	StorageFilename  string `json:"storageFilename"`
	ImageURL         string `json:"imageUrl"`
	MimeType         string `json:"mimeType"`
	ImageWidth       int    `json:"imageWidth"`
	ImageHeight      int    `json:"imageHeight"`
	FileSizeBytes    int64  `json:"fileSizeBytes"`
	ImageView        string `json:"imageView"`
	ImageDescription string `json:"imageDescription"`
	DisplayOrder     int    `json:"displayOrder"`
	CreatedDate      string `json:"createdDate"`
}

type Postcover struct {
	PostcoverID   int    `json:"postcoverId"`
	PostcoverKey  string `json:"postcoverKey"`
	OwnerUsername string `json:"ownerUsername"`
	PostmarkCount int    `json:"postmarkCount"`
	CreatedDate   string `json:"createdDate"`
}

type PostmarkImage struct {
	PostmarkImageID  int    `json:"postmarkImageId"`
	OriginalFilename string `json:"originalFilename"`
	StorageFilename  string `json:"storageFilename"`
	ImageURL         string `json:"imageUrl"`
	MimeType         string `json:"mimeType"`
	ImageWidth       int    `json:"imageWidth"`
	ImageHeight      int    `json:"imageHeight"`
	FileSizeBytes    int64  `json:"fileSizeBytes"`
	ImageView        string `json:"imageView"`
	ImageStatus      string `json:"imageStatus"`
	SubmitterName    string `json:"submitterName"`
	SubmitterEmail   string `json:"submitterEmail"`
	ImageDescription string `json:"imageDescription"`
	DisplayOrder     int    `json:"displayOrder"`
	UploadedBy       int    `json:"uploadedBy"`
	CreatedDate      string `json:"createdDate"`
}

type PostmarkShape struct {
	PostmarkShapeID  int    `json:"postmarkShapeId"`
	CreatedDate      string `json:"createdDate"`
	ModifiedDate     string `json:"modifiedDate"`
	ShapeName        string `json:"shapeName"`
	ShapeDescription string `json:"shapeDescription"`
	CreatedBy        int    `json:"createdBy"`
	ModifiedBy       int    `json:"modifiedBy"`
}

type PostmarkValuation struct {
	PostmarkValuationID int    `json:"postmarkValuationId"`
	ValuedBy            User   `json:"valuedBy"`
	EstimatedValue      string `json:"estimatedValue"`
	ValuationDate       string `json:"valuationDate"`
	CreatedDate         string `json:"createdDate"`
}

type PublicationReference struct {
	PostmarkPublicationReferenceID int    `json:"postmarkPublicationReferenceId"`
	PostmarkPublication            int    `json:"postmarkPublication"`
	PublicationTitle               string `json:"publicationTitle"`
	PublishedID                    string `json:"publishedId"`
	ReferenceLocation              string `json:"referenceLocation"`
	CreatedDate                    string `json:"createdDate"`
}

type Publication struct {
	PostmarkPublicationID int    `json:"postmarkPublicationId"`
	CreatedBy             User   `json:"createdBy"`
	ModifiedBy            User   `json:"modifiedBy"`
	CreatedDate           string `json:"createdDate"`
	ModifiedDate          string `json:"modifiedDate"`
	PublicationTitle      string `json:"publicationTitle"`
	Author                string `json:"author"`
	Publisher             string `json:"publisher"`
	PublicationDate       string `json:"publicationDate"`
	ISBN                  string `json:"isbn"`
	Edition               string `json:"edition"`
	PublicationType       string `json:"publicationType"`
}

type Postmark struct {
	PostmarkID        int     `json:"postmarkId"`
	PostmarkKey       string  `json:"postmarkKey"`
	FacilityName      string  `json:"facilityName"`
	ShapeName         string  `json:"shapeName"`
	RateLocation      string  `json:"rateLocation"`
	RateValue         string  `json:"rateValue"`
	IsManuscript      bool    `json:"isManuscript"`
	MainImage         *string `json:"mainImage"`
	ResponsibleGroups []any   `json:"responsibleGroups"`
}
