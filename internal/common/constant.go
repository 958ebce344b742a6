package common

// AuthorizationHeaderName carries "Bearer <access token>" on authenticated
// HTTP requests.
const AuthorizationHeaderName = "Authorization"

// SubmissionImagesBucket is the default object-storage bucket for images
// attached to submissions.
const SubmissionImagesBucket = "submission-images"

// MaxImageSize is the largest accepted submission image (10 MB).
const MaxImageSize int64 = 10 * 1024 * 1024

// AllowedImageTypes lists the content types accepted for submission images.
var AllowedImageTypes = []string{"image/png", "image/jpeg", "image/jpg", "image/webp", "image/tiff"}

// DefaultValuation is assigned to catalog records published from approved
// submissions.
const DefaultValuation = "Common"

// HealthServiceName is the grpc.health.v1 service name of the catalog
// server.
const HealthServiceName = "worldcovers.Catalog"
