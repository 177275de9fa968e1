package compute

// The four compute kernels, embedded as source and compiled at backend
// init. Their per-invocation semantics mirror the pure functions in the md
// package exactly: zeroForceSrc <-> zero fill, forceSrc <-> md.ForceOnAtom
// (force part), bootstrapSrc <-> md.BootstrapAtom, verletSrc <-> md.VerletAtom.
// One invocation handles one atom; the work-group width matches the
// localSize dispatch hint.

const localSize = 16

const zeroForceSrc = `#version 430
layout(local_size_x = 16) in;

layout(std430, binding = 3) buffer Force { vec4 f[]; };

uniform int numAtom;

void main() {
    int n = int(gl_GlobalInvocationID.x);
    if (n >= numAtom) {
        return;
    }
    f[n] = vec4(0.0);
}
`

const forceSrc = `#version 430
layout(local_size_x = 16) in;

layout(std430, binding = 0) buffer Pos   { vec4 r[]; };
layout(std430, binding = 3) buffer Force { vec4 f[]; };

uniform int   ncp;
uniform int   numAtom;
uniform float periodicLen;
uniform float rc2;

void main() {
    int n = int(gl_GlobalInvocationID.x);
    if (n >= numAtom) {
        return;
    }

    vec4 acc = f[n];

    for (int m = 0; m < numAtom; m++) {
        for (int i = -ncp; i <= ncp; i++) {
            for (int j = -ncp; j <= ncp; j++) {
                for (int k = -ncp; k <= ncp; k++) {
                    if (n == m && i == 0 && j == 0 && k == 0) {
                        continue;
                    }

                    vec4 s = vec4(float(i), float(j), float(k), 0.0) * periodicLen;
                    vec4 d = r[n] - (r[m] + s);

                    float r2 = dot(d.xyz, d.xyz);
                    if (r2 <= rc2) {
                        float rr   = sqrt(r2);
                        float rm6  = 1.0 / (r2 * r2 * r2);
                        float rm7  = rm6 / rr;
                        float rm12 = rm6 * rm6;
                        float rm13 = rm12 / rr;

                        float fr = 48.0 * rm13 - 24.0 * rm7;

                        acc += d / rr * fr;
                    }
                }
            }
        }
    }

    f[n] = acc;
}
`

const bootstrapSrc = `#version 430
layout(local_size_x = 16) in;

layout(std430, binding = 0) buffer Pos   { vec4 r[]; };
layout(std430, binding = 1) buffer Prev  { vec4 r1[]; };
layout(std430, binding = 2) buffer Vel   { vec4 v[]; };
layout(std430, binding = 3) buffer Force { vec4 f[]; };

uniform int   numAtom;
uniform float dt;
uniform float s;

void main() {
    int n = int(gl_GlobalInvocationID.x);
    if (n >= numAtom) {
        return;
    }

    r1[n] = r[n];

    // scaling of velocity
    v[n] *= s;

    // update coordinates and velocity
    r[n] += dt * v[n] + 0.5 * f[n] * dt * dt;

    v[n] += dt * f[n];
}
`

const verletSrc = `#version 430
layout(local_size_x = 16) in;

layout(std430, binding = 0) buffer Pos   { vec4 r[]; };
layout(std430, binding = 1) buffer Prev  { vec4 r1[]; };
layout(std430, binding = 2) buffer Vel   { vec4 v[]; };
layout(std430, binding = 3) buffer Force { vec4 f[]; };

uniform int   numAtom;
uniform float dt;

void main() {
    int n = int(gl_GlobalInvocationID.x);
    if (n >= numAtom) {
        return;
    }

    vec4 rtmp = r[n];

    // update coordinates and velocity
    r[n] = 2.0 * r[n] - r1[n] + f[n] * dt * dt;

    v[n] = 0.5 * (r[n] - r1[n]) / dt;

    r1[n] = rtmp;
}
`
