// internal/service/enhancement_prompt.go
package service

import (
	"fmt"
	"strings"

	"github.com/functionasasin/projects-api/internal/model"
)

// EnhancementSystemPrompt は生成APIに渡す system ロールの固定文言です
const EnhancementSystemPrompt = "You are a highly skilled web developer with expertise in frontend, backend, and full-stack web applications. " +
	"Your task is to enhance web development projects by refining their features and technology stack while maintaining the core idea. " +
	"The enhancements should be realistic, scalable, and follow industry best practices for modern web applications. " +
	"Respond strictly in the requested JSON format."

const promptFeatureExpansion = `Feature Expansion:
- Improve upon existing features instead of replacing them.
- Introduce additional web-focused features that complement the existing ones.
`

// 技術スタックの構成ルール。生成結果はこのルールで評価されるため「制約」として書く。
const promptTechStackRules = `Tech Stack Rules (these are hard constraints, not suggestions):
- The tech stack may ONLY contain:
  * Frontend frameworks (e.g. React, Vue.js, Angular, Svelte, Next.js, Nuxt.js)
  * CSS frameworks (e.g. Tailwind CSS, Bootstrap)
  * Backend frameworks (e.g. Express, Django, Flask, FastAPI, Ruby on Rails, Spring Boot)
  * Programming languages, ONLY when not already implied by a listed framework
  * Databases (e.g. PostgreSQL, MongoDB, MySQL)
- The following are NOT tech stack items. If the enhancement needs them, describe them in new_features instead:
  * Authentication systems and identity providers (e.g. JWT, OAuth, Auth0, Passport)
  * Task queues and background job runners (e.g. Celery, Sidekiq, BullMQ)
  * Message brokers (e.g. RabbitMQ, Kafka)
  * Caches (e.g. Redis, Memcached)
  * Web servers and reverse proxies (e.g. Nginx, Apache)
  * Container and CI/CD tooling (e.g. Docker, Kubernetes, GitHub Actions)
  * Cloud services (e.g. AWS S3, Firebase, Vercel)
  * Individual libraries or packages (e.g. Axios, NumPy, Socket.IO, Redux)
- Keep the stack coherent:
  * Use exactly one backend ecosystem (do not mix, for example, Django and Express).
  * Do not list redundant pairs: if a framework is built on another, list only the higher-level one (Next.js, not Next.js and React). A framework implies its language (Django implies Python, so do not list Python).
  * Use one or two databases, never more.
  * When replacing a technology with a more advanced alternative (like React to Next.js), remove the original one.
`

const promptWebPractices = `Web Development Best Practices:
- Ensure performance optimization techniques are applied.
- Suggest improvements for accessibility (a11y) and responsive design.
- Follow security best practices (e.g., CSRF protection, secure session handling).
`

const promptIntermediateGuidelines = `For Intermediate Level Enhancements:
- Introduce 2-3 additional features that improve the user experience (e.g. better UI state handling, animations, real-time updates).
- Add user authentication and authorization as a feature (e.g. "JWT-based login and protected routes"), not as a tech stack item.
- Add database persistence if the project has none.
- Add performance features such as response caching or pagination, described as features.
`

const promptAdvancedGuidelines = `For Advanced Level Enhancements:
- Introduce 3-5 high-complexity features (e.g. multi-user roles, dynamic permissions, background processing, AI-powered recommendations).
- Add full authentication with role-based access control (RBAC) as a feature.
- Consider real-time communication, GraphQL APIs or service decomposition where it fits the idea.
- Add security features such as rate limiting and encryption of sensitive data.
- Include deployment concerns (CI/CD, containerization, cloud hosting) as features, never as tech stack items.
`

const promptResponseShape = `Return your response as a JSON object with exactly this structure and no other keys:
{
    "description": "Enhanced project description.",
    "tech_stack": ["Tech1", "Tech2", "Tech3"],
    "new_features": ["Feature1", "Feature2", "Feature3"],
    "justification": {
        "tech_stack": "Explain why these technologies were chosen.",
        "features": "Explain how these new features enhance the web project."
    }
}
`

// BuildEnhancementPrompt は強化元プロジェクトと強化先ティアから生成APIへの指示文を作ります。
// 同じ入力からは常に同じ文字列を返します。
func BuildEnhancementPrompt(basis *model.Project, target model.Difficulty) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I have a %s level web development project that I want to enhance to %s difficulty level.\n\n",
		basis.Difficulty, target)

	b.WriteString("Original Project Details:\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", basis.Title)
	fmt.Fprintf(&b, "Description: %s\n\n", basis.Description)
	fmt.Fprintf(&b, "Project Type: %s\n\n", basis.ProjectType)
	fmt.Fprintf(&b, "Tech Stack: %s\n\n", strings.Join(basis.TechStack, ", "))

	b.WriteString("Enhancement Instructions:\n\n")
	b.WriteString(promptFeatureExpansion)
	b.WriteString("\n")
	b.WriteString(projectTypeRule(basis.ProjectType))
	b.WriteString("\n")
	b.WriteString(promptTechStackRules)
	b.WriteString("\n")
	b.WriteString(promptWebPractices)
	b.WriteString("\n")

	b.WriteString("Difficulty-Specific Guidelines:\n")
	switch target {
	case model.DifficultyIntermediate:
		b.WriteString(promptIntermediateGuidelines)
	case model.DifficultyAdvanced:
		b.WriteString(promptAdvancedGuidelines)
		// 強化元が intermediate の強化結果なら、既出の機能を重複させない
		if basis.Difficulty == model.DifficultyIntermediate && len(basis.NewFeatures) > 0 {
			b.WriteString("- The intermediate version already added these features:\n")
			for _, f := range basis.NewFeatures {
				fmt.Fprintf(&b, "  * %s\n", f)
			}
			b.WriteString("- Do NOT repeat any of them in new_features. Every new feature must be new at the advanced level.\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(promptResponseShape)
	return b.String()
}

func projectTypeRule(pt model.ProjectType) string {
	switch pt {
	case model.ProjectTypeFrontend:
		return "Project Type Rule: This is a FRONTEND project. Only include frontend frameworks, CSS frameworks and related languages. Do not include backend frameworks or databases.\n"
	case model.ProjectTypeBackend:
		return "Project Type Rule: This is a BACKEND project. Only include a backend framework, its language if not implied, and databases. Do not include frontend frameworks like React.\n"
	default:
		return "Project Type Rule: This is a FULLSTACK project. Include one frontend framework, one backend ecosystem and one or two databases. " +
			"Well-known combinations include MERN (MongoDB, Express, React, Node.js), PERN (PostgreSQL, Express, React, Node.js) and FARM (FastAPI, React, MongoDB), but vary the choice to suit the idea.\n"
	}
}
