/*
Package tls provides server-side TLS configuration for sepulcherd.

	cfg := &tls.Config{
		Enabled:  true,
		CertFile: "/etc/sepulcher/certs/server.crt",
		KeyFile:  "/etc/sepulcher/certs/server.key",
	}

	tlsConfig, err := cfg.ToTLSConfig()
	if err != nil {
		log.Fatal(err)
	}

TLS 1.3 is enforced unconditionally; there is no client-certificate
authentication or certificate hot-reload here, since nothing in this
service needs either.
*/
package tls
