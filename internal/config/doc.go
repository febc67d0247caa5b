// Package config loads approuter configuration with viper.
//
// Values come from, lowest priority first: built-in defaults, the
// approuter.yaml file, APPROUTER_* environment variables and command-line
// flags bound with BindFlags.
//
// # Configuration File Structure
//
//	dir: app
//	extensions: [.js, .html]
//	origin: http://localhost:3000
//	addr: localhost:3000
//	watch: true
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: approuter
//	s3:
//	  bucket: my-site
//	  prefix: app/
//	  region: us-east-1
//
// Nested keys map to environment variables with "_": s3.bucket is read from
// APPROUTER_S3_BUCKET.
//
// # Usage
//
//	v, err := config.NewViper("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg, err := config.Load(v)
package config
