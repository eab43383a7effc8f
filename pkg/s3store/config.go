package s3store

// Config contains configuration for the S3 store.
type Config struct {
	Bucket         string `env:"S3_BUCKET,required"`                     // Bucket holds the state objects.
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`       // Region of the bucket.
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`                       // AccessKeyID enables static credentials together with SecretKey.
	SecretKey      string `env:"S3_SECRET_KEY"`                          // SecretKey enables static credentials together with AccessKeyID.
	Endpoint       string `env:"S3_ENDPOINT"`                            // Endpoint for S3-compatible services.
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // ForcePathStyle for services like MinIO.
	KeyPrefix      string `env:"S3_KEY_PREFIX" envDefault:"beacon/"`     // KeyPrefix is prepended to every object key.
}
