package ingest

import "github.com/jonathan/resume-coach/internal/types"

// DemoResume returns the built-in seed resume. It is used when the
// caller provides no resume of their own, so the assistant is usable
// out of the box. Section content is deliberately mixed-shape: lists,
// maps, and plain strings all occur in real seed data.
func DemoResume() map[types.SectionID]any {
	return map[types.SectionID]any{
		types.SectionSkills: []string{"java", "python", "aws", "docker", "kubernetes"},
		types.SectionExperiences: "Senior Developer at XYZ Corp building data pipelines and APIs. " +
			"Led a team of 5 developers.",
		types.SectionEducation: "B.Tech Computer Science, ABC University, 2022. GPA: 3.8/4.0",
		types.SectionProjects: []string{
			"Real-time analytics platform (Python, Kafka, Redis)",
			"Resume intelligence tool (LLM, embeddings, vector DB)",
		},
		types.SectionSummary: "Results-driven software engineer with 5+ years of experience in " +
			"building scalable applications. Specialized in Python, cloud technologies, and system design.",
		types.SectionContact: map[string]string{
			"email":    "john.doe@example.com",
			"phone":    "+1 (555) 123-4567",
			"linkedin": "linkedin.com/in/johndoe",
			"github":   "github.com/johndoe",
		},
		types.SectionCertificates: []string{
			"AWS Certified Solutions Architect - Associate (2023)",
			"Google Cloud Professional Data Engineer (2022)",
			"Docker Certified Associate (2021)",
		},
		types.SectionPublications: []string{
			"Optimizing Microservices Communication: A Case Study (2023)",
			"Machine Learning Model Deployment Best Practices (2022)",
		},
		types.SectionLanguages: []map[string]string{
			{"name": "English", "proficiency": "Native"},
			{"name": "Spanish", "proficiency": "Professional Working"},
			{"name": "Hindi", "proficiency": "Native"},
		},
		types.SectionRecommendations: []map[string]string{
			{
				"name":     "Jane Smith",
				"position": "CTO at XYZ Corp",
				"text":     "John consistently delivered high-quality code and mentored junior team members.",
				"date":     "2024-01-15",
			},
			{
				"name":     "Mike Johnson",
				"position": "Senior Developer at ABC Tech",
				"text":     "Exceptional problem-solving skills and a great team player.",
				"date":     "2023-11-05",
			},
		},
		types.SectionCustom: map[string][]string{
			"achievements": {
				"Speaker at TechConf 2023: 'Modern Cloud Architectures'",
				"Open Source Contributor: Contributed to 5+ major projects",
			},
			"volunteer": {
				"Mentor at Code for Good (2022-Present)",
				"Organizer at Local Hackathon (2021, 2022)",
			},
		},
	}
}

// DemoJobDescription returns the built-in job posting used when no
// job text or URL is supplied.
func DemoJobDescription() string {
	return `Job Title: Senior Python Developer (Cloud & Data Engineering Focus)
Location: Remote / Hybrid
Employment Type: Full-Time

About the Role
We are seeking a results-driven Python Developer with strong experience in building scalable
applications, APIs, and modern cloud-based data platforms. The ideal candidate will have
expertise in Python, cloud technologies (AWS/GCP), and containerization tools (Docker,
Kubernetes), while also demonstrating proven impact through measurable results in past projects.

Key Responsibilities
- Design, build, and maintain data pipelines and APIs with high reliability and performance.
- Develop real-time analytics platforms and contribute to NLP/vector database-based solutions.
- Implement infrastructure as code (Terraform) and manage scalable cloud environments.
- Collaborate with cross-functional teams, ensuring CI/CD pipelines and DevOps practices.
- Quantify and communicate the impact of delivered projects.
- Mentor junior engineers and contribute to open-source/community initiatives.

Required Skills & Qualifications
- Bachelor's degree in Computer Science or related field (Master's preferred).
- 5+ years of software engineering experience: Python, Java, AWS and GCP,
  Docker, Kubernetes, Terraform, CI/CD pipelines, system design, microservices.
- Experience with NLP, embeddings, and vector databases.
- Strong written/oral communication, with published technical findings a plus.
- Multilingual ability (English, Spanish, Hindi preferred).

Nice to Have
- Recent cloud certifications (AWS, GCP, Azure).
- Previous conference talks, publications, or open-source contributions.
- Active involvement in mentorship, hackathons, or community organizations.`
}
