// Package upload provides the server half of the image upload pipeline:
// temp-file storage backends, an HTTP handler that accepts multipart
// uploads, and a client that plugs into imagebutton.Config.OnImageUpload.
//
// Uploaded files are held temporarily under a random temp ID until the
// application claims them:
//
//	store, _ := upload.NewDiskStore("/var/tmp/imago", 5<<20)
//	r.Post("/upload", upload.Handler(store))
//
//	// later, after the client hands back the temp_id:
//	file, err := store.Claim(ctx, tempID)
//	defer file.Close()
//
// Unclaimed files expire; run Cleanup periodically. DiskStore keeps
// files on the local filesystem, S3Store keeps them in a bucket.
package upload
