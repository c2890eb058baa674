package config

// Ports of the deployed inference service.
const (
	// ContainerPort is the port the inference API listens on inside the pod.
	ContainerPort = 8000

	// ServicePort is the external port exposed by the load balancer service.
	ServicePort = 80
)
